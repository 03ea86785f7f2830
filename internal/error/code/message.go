package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "成功",
	ErrUnknown:          "未知错误",
	ErrBind:             "请求参数绑定错误",
	ErrValidation:       "请求参数验证错误",
	ErrTokenInvalid:     "无效的认证令牌",
	ErrPermissionDenied: "权限不足",
	ErrTooManyRequests:  "请求频率过高",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",
	ErrRoleInvalid:           "无效的用户角色",
	ErrNotParamedic:          "该账户不是急救员",
	ErrResetTokenInvalid:     "密码重置令牌无效或已过期",

	// 急救请求相关错误码
	ErrRequestNotFound:      "急救请求不存在",
	ErrInvalidTransition:    "状态转换不合法",
	ErrDuplicateStatus:      "新状态与当前状态相同",
	ErrRequestTerminal:      "请求已处于终态，不允许继续变更",
	ErrParamedicUnavailable: "急救员当前不可用",

	// 车辆相关错误码
	ErrAmbulanceNotFound:     "救护车不存在",
	ErrAmbulanceAlreadyExist: "救护车已存在",
	ErrAmbulanceNotAvailable: "救护车不可调度",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrRoleInvalid:           StatusBadRequest,
	ErrNotParamedic:          StatusBadRequest,
	ErrResetTokenInvalid:     StatusBadRequest,

	// 急救请求相关错误码
	ErrRequestNotFound:      StatusNotFound,
	ErrInvalidTransition:    StatusBadRequest,
	ErrDuplicateStatus:      StatusBadRequest,
	ErrRequestTerminal:      StatusBadRequest,
	ErrParamedicUnavailable: StatusBadRequest,

	// 车辆相关错误码
	ErrAmbulanceNotFound:     StatusNotFound,
	ErrAmbulanceAlreadyExist: StatusBadRequest,
	ErrAmbulanceNotAvailable: StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}
