package domain

import "time"

// User roles.
const (
	RoleMember      = 0
	RoleClubManager = 1
	RoleAdmin       = 2
)

// Appeal matters, by what the appeal targets.
const (
	MatterComment     = 1
	MatterActivity    = 2
	MatterUser        = 3
	MatterClubManager = 4
)

// User is a registered account.
type User struct {
	ID         int    `json:"userId"`
	Name       string `json:"userName"`
	Role       int    `json:"role"`
	Prohibited bool   `json:"prohibited"`
}

// Activity is a club event that comments are attached to.
type Activity struct {
	ID   int        `json:"actId"`
	Name string     `json:"actName"`
	Time *time.Time `json:"actTime,omitempty"`
}

// Comment is posted under an activity. ParentID is 0 for top-level comments.
type Comment struct {
	ID       int       `json:"cmtId"`
	Content  string    `json:"cmtContent"`
	Time     time.Time `json:"cmtTime"`
	ActID    int       `json:"actId"`
	UserID   int       `json:"userId"`
	ParentID int       `json:"parentId"`
}

// Appeal is a complaint about exactly one user, comment or activity.
type Appeal struct {
	ID            int       `json:"appId"`
	Time          time.Time `json:"appTime"`
	Matters       int       `json:"appMatters"`
	Content       string    `json:"appContent"`
	UserID        *int      `json:"userId"`
	ActID         *int      `json:"actId"`
	CmtID         *int      `json:"cmtId"`
	ComplainantID *int      `json:"complainantId"`
}

// AppealImage links a stored image file to an appeal.
type AppealImage struct {
	ID    int    `json:"appImgId"`
	AppID int    `json:"appId"`
	Path  string `json:"appImage"`
}

// AppealDetail is an appeal with its images inlined as base64.
type AppealDetail struct {
	Appeal
	CmtIDText string   `json:"cmtIdText"`
	Images    []string `json:"images"`
}

// AppealPage is one page of appeals plus the overall count.
type AppealPage struct {
	Total   int            `json:"total"`
	Appeals []AppealDetail `json:"appeals"`
}

// UserPage is one page of users plus the overall count.
type UserPage struct {
	Total int    `json:"total"`
	Users []User `json:"users"`
}
