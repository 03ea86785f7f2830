package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: 权限不足.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
	// ErrRoleInvalid - 400: 角色无效.
	ErrRoleInvalid
	// ErrNotParamedic - 400: 该账户不是急救员.
	ErrNotParamedic
	// ErrResetTokenInvalid - 400: 密码重置令牌无效或已过期.
	ErrResetTokenInvalid
)

// 急救请求相关错误码 (102xxx).
const (
	// ErrRequestNotFound - 404: 急救请求不存在.
	ErrRequestNotFound int = iota + 102000
	// ErrInvalidTransition - 400: 状态转换不合法.
	ErrInvalidTransition
	// ErrDuplicateStatus - 400: 新状态与当前状态相同.
	ErrDuplicateStatus
	// ErrRequestTerminal - 400: 请求已处于终态.
	ErrRequestTerminal
	// ErrParamedicUnavailable - 400: 急救员当前不可用.
	ErrParamedicUnavailable
)

// 车辆相关错误码 (103xxx).
const (
	// ErrAmbulanceNotFound - 404: 救护车不存在.
	ErrAmbulanceNotFound int = iota + 103000
	// ErrAmbulanceAlreadyExist - 400: 救护车已存在.
	ErrAmbulanceAlreadyExist
	// ErrAmbulanceNotAvailable - 400: 救护车不可调度.
	ErrAmbulanceNotAvailable
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

// GetMessage 返回错误码对应的消息
func GetMessage(errorCode int) string {
	if msg, ok := codeMessageMap[errorCode]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 返回错误码对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
