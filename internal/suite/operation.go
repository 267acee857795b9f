package suite

import (
	"context"
	"sort"

	"ctr/internal/domain"
	"ctr/internal/service"
)

// Operation is one business call a suite exercises.
type Operation struct {
	Name    string
	Success string
	Call    func(ctx context.Context, svc *service.Services, c Case) error
}

var operations = map[string]Operation{
	"add_comment": {
		Name:    "add_comment",
		Success: "add comment success",
		Call:    addComment,
	},
	"prohibit": {
		Name:    "prohibit",
		Success: "prohibit operation success",
		Call:    prohibit,
	},
	"add_appeal": {
		Name:    "add_appeal",
		Success: "add appeal success",
		Call:    addAppeal,
	},
}

// LookupOperation returns the registered operation with the given name.
func LookupOperation(name string) (Operation, bool) {
	op, ok := operations[name]
	return op, ok
}

// OperationNames lists the registered operations.
func OperationNames() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields are coerced in the order the service request is assembled, so the
// first bad field is the one reported.

func addComment(ctx context.Context, svc *service.Services, c Case) error {
	at, err := c.Time("cmt_time")
	if err != nil {
		return err
	}
	actID, err := c.Int("act_id")
	if err != nil {
		return err
	}
	userID, err := c.Int("user_id")
	if err != nil {
		return err
	}
	return svc.Communicate.AddComment(ctx, domain.AddCommentRequest{
		Content: c.Field("cmt_content"),
		Time:    at,
		ActID:   actID,
		UserID:  userID,
	})
}

func prohibit(ctx context.Context, svc *service.Services, c Case) error {
	flag, err := c.Int("if_prohibited")
	if err != nil {
		return err
	}
	userID, err := c.Int("user_id")
	if err != nil {
		return err
	}
	return svc.Profile.SetUserProhibitedStatus(ctx, userID, flag == 1)
}

func addAppeal(ctx context.Context, svc *service.Services, c Case) error {
	userID, err := c.OptionalInt("user_id")
	if err != nil {
		return err
	}
	cmtID, err := c.OptionalInt("cmt_id")
	if err != nil {
		return err
	}
	actID, err := c.OptionalInt("act_id")
	if err != nil {
		return err
	}
	complainantID, err := c.OptionalInt("complainant_id")
	if err != nil {
		return err
	}
	at, err := c.Time("app_time")
	if err != nil {
		return err
	}
	return svc.Order.AddAppeal(ctx, domain.AddAppealRequest{
		Time:          at,
		Content:       c.Field("app_content"),
		UserID:        userID,
		CmtID:         cmtID,
		ActID:         actID,
		ComplainantID: complainantID,
	})
}
