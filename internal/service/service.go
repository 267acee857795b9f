// Package service implements the club backend's business operations.
package service

import "ctr/internal/store"

// MaxContentLength is the longest comment or appeal body accepted, in characters.
const MaxContentLength = 1024

// Services bundles the business services bound to one store handle.
type Services struct {
	Profile     *ProfileService
	Communicate *CommunicateService
	Order       *OrderService
}

// New wires all services onto the same queries and image store.
func New(q *store.Queries, images *ImageStore) *Services {
	return &Services{
		Profile:     NewProfileService(q),
		Communicate: NewCommunicateService(q),
		Order:       NewOrderService(q, images),
	}
}
