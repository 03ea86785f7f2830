package services

import "errors"

// 服务层错误哨兵；控制器通过 errors.Is 将其翻译为统一错误码。
// 三类错误：权限类、资源不存在类、校验类。
var (
	// 权限类
	ErrPermissionDenied = errors.New("权限不足")

	// 资源不存在类
	ErrUserNotFound      = errors.New("用户不存在")
	ErrRequestNotFound   = errors.New("急救请求不存在")
	ErrAmbulanceNotFound = errors.New("救护车不存在")

	// 校验类
	ErrRoleInvalid          = errors.New("无效的用户角色")
	ErrInvalidStatus        = errors.New("无效的状态值")
	ErrNotParamedic         = errors.New("该账户不是急救员")
	ErrInvalidTransition    = errors.New("状态转换不合法")
	ErrRequestTerminal      = errors.New("请求已处于终态")
	ErrDuplicateStatus      = errors.New("新状态与当前状态相同")
	ErrParamedicUnavailable = errors.New("急救员当前不可用")
	ErrUserAlreadyExist     = errors.New("用户已存在")
	ErrAmbulanceExists      = errors.New("救护车已存在")
	ErrResetTokenInvalid    = errors.New("密码重置令牌无效或已过期")
	ErrPasswordIncorrect    = errors.New("用户密码错误")
)
