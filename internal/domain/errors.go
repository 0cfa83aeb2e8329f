package domain

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrorCodeUserInactive    ErrorCode = "USER_INACTIVE"
	ErrorCodeSlotTaken       ErrorCode = "SLOT_TAKEN"
	ErrorCodeBookingClosed   ErrorCode = "BOOKING_CLOSED"
	ErrorCodeAlreadyPaid     ErrorCode = "ALREADY_PAID"
	ErrorCodePaymentDeclined ErrorCode = "PAYMENT_DECLINED"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}
