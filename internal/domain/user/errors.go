package user

import "errors"

var (
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrApproverAccessRequired = errors.New("approver access required")
	ErrInvalidToken           = errors.New("invalid or missing token")
)
