package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrUnknownSection ErrCode = "UNKNOWN_SECTION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "입력값 검증에 실패했습니다. 요청 내용을 확인해 주세요."
	case ErrInvalidPayload:
		return "요청 형식이 올바르지 않습니다."
	case ErrNotFound:
		return "요청한 리소스를 찾을 수 없습니다."
	case ErrUnknownSection:
		return "해당 과목을 현재 카탈로그에서 찾을 수 없습니다."
	case ErrRateLimitExceeded:
		return "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."
	case ErrInternal:
		return "서버 내부 오류가 발생했습니다."
	default:
		return "알 수 없는 오류가 발생했습니다."
	}
}
