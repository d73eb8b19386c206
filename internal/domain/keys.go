package domain

type CtxKey string

const (
	// KeyUserEmail holds the principal resolved from the bearer token.
	// Absent when the request is anonymous.
	KeyUserEmail CtxKey = "Email"
)

// CanMutate is the ownership gate applied before every write: the acting
// principal must be present and equal to the resource's owner email.
func CanMutate(principal, ownerEmail string) bool {
	return principal != "" && principal == ownerEmail
}
