package logic

import "fmt"

type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusFailedPrecondition
	StatusUnauthenticated
)

// Error message constants for the storefront domain.
const (
	ErrMsgProductIDRequired  = "Product ID is required"
	ErrMsgProductNotFound    = "Product not found"
	ErrMsgQuantityPositive   = "Quantity must be positive"
	ErrMsgQuantityTooLarge   = "Quantity exceeds the per-item limit"
	ErrMsgCouponCodeRequired = "Coupon code is required"
	ErrMsgInvalidCoupon      = "Invalid coupon code"
	ErrMsgCartEmpty          = "Cart is empty"
	ErrMsgNotSignedIn        = "User is not signed in"
	ErrMsgAddressIncomplete  = "Address line and city are required"
	ErrMsgPaymentIncomplete  = "Payment method brand and last four digits are required"
	ErrMsgUnknownShipping    = "Unknown shipping method"
	ErrMsgCheckoutPending    = "Checkout already in progress"
	ErrMsgNotInWishlist      = "Product is not in the wishlist"
	ErrMsgOrderNotFound      = "Order not found"
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusFailedPrecondition:
		return "FAILED_PRECONDITION"
	case StatusUnauthenticated:
		return "UNAUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

// CommandError is a user-visible rejection. It never leaves a store
// partially mutated.
type CommandError struct {
	Code    StatusCode
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

func NewInvalidArgument(message string) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: message}
}

func NewFailedPrecondition(message string) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: message}
}

func NewFailedPreconditionf(format string, args ...interface{}) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthenticated(message string) *CommandError {
	return &CommandError{Code: StatusUnauthenticated, Message: message}
}
