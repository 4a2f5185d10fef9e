package domain

type CtxKey string

const (
	KeyUserID      CtxKey = "UserID"
	KeyUserEmail   CtxKey = "Email"
	KeyUserRole    CtxKey = "Role"
	KeyAccountKind CtxKey = "AccountKind"
	// KeyPayload holds the request body already bound by a validation middleware.
	KeyPayload CtxKey = "Payload"
)
