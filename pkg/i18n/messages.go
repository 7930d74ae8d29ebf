package i18n

// DefaultMessages returns built-in translations for all supported locales.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocaleKo: koMessages,
		LocaleEn: enMessages,
		LocaleJa: jaMessages,
	}
}

var koMessages = map[string]string{
	// Common errors
	"error.bad_request":       "잘못된 요청입니다",
	"error.validation":        "입력값이 올바르지 않습니다",
	"error.unauthorized":      "인증이 필요합니다",
	"error.token_expired":     "인증 토큰이 만료되었습니다",
	"error.token_invalid":     "유효하지 않은 인증 토큰입니다",
	"error.forbidden":         "관리자 권한이 필요합니다",
	"error.too_many_requests": "요청이 너무 많습니다. %d초 후 다시 시도해주세요",

	// Entries
	"entry.not_found":       "FAQ 를 찾을 수 없습니다",
	"entry.invalid":         "FAQ 요청이 올바르지 않습니다",
	"entry.foreign_owner":   "다른 소유자의 FAQ 가 순서에 포함되어 있습니다",
	"entry.filter_required": "kind 와 owner_id 가 필요합니다",
	"entry.id_required":     "FAQ ID 가 필요합니다",
	"entry.kind_required":   "FAQ ID 와 올바른 kind 가 필요합니다",
	"entry.list_failed":     "FAQ 목록을 불러오지 못했습니다",
	"entry.get_failed":      "FAQ 를 불러오지 못했습니다",
	"entry.create_failed":   "FAQ 를 추가하지 못했습니다",
	"entry.update_failed":   "FAQ 를 수정하지 못했습니다",
	"entry.delete_failed":   "FAQ 를 삭제하지 못했습니다",
	"entry.reorder_failed":  "FAQ 순서를 저장하지 못했습니다",
}

var enMessages = map[string]string{
	// Common errors
	"error.bad_request":       "Invalid request body",
	"error.validation":        "Validation failed",
	"error.unauthorized":      "Missing authorization header",
	"error.token_expired":     "Token expired",
	"error.token_invalid":     "Invalid token",
	"error.forbidden":         "Admin privileges required",
	"error.too_many_requests": "Too many requests. Retry in %d seconds",

	// Entries
	"entry.not_found":       "Entry not found",
	"entry.invalid":         "Invalid entry request",
	"entry.foreign_owner":   "Order contains entries of another owner",
	"entry.filter_required": "kind and owner_id are required",
	"entry.id_required":     "Entry ID is required",
	"entry.kind_required":   "Entry ID and a valid kind are required",
	"entry.list_failed":     "Failed to retrieve entries",
	"entry.get_failed":      "Failed to retrieve entry",
	"entry.create_failed":   "Failed to create entry",
	"entry.update_failed":   "Failed to update entry",
	"entry.delete_failed":   "Failed to delete entry",
	"entry.reorder_failed":  "Failed to reorder entries",
}

var jaMessages = map[string]string{
	"error.bad_request":       "不正なリクエストです",
	"error.validation":        "入力値が正しくありません",
	"error.unauthorized":      "認証が必要です",
	"error.forbidden":         "管理者権限が必要です",
	"error.too_many_requests": "リクエスト制限を超えました。%d秒後に再試行してください",

	"entry.not_found":     "FAQが見つかりません",
	"entry.invalid":       "FAQのリクエストが正しくありません",
	"entry.foreign_owner": "他の所有者のFAQが含まれています",
}
