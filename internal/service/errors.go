package service

import apperrors "carenote/backend/pkg/errors"

// 业务错误沿用 pkg/errors 的分类，Handler 层用 errors.Is 判断
var (
	ErrUpstreamUnavailable = apperrors.ErrUpstreamUnavailable
	ErrNotFound            = apperrors.ErrNotFound
	ErrValidationMissing   = apperrors.ErrValidationMissing
	ErrFetchFailed         = apperrors.ErrFetchFailed
)
