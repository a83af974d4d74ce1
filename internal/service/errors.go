// 文件路径: internal/service/errors.go
package service

import (
	"errors"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

var (
	// ErrNotFound indicates requested resource does not exist.
	ErrNotFound = errors.New("service: not found / 未找到资源")
	// ErrInvalidInput indicates a request failed validation.
	ErrInvalidInput = errors.New("service: invalid input / 输入无效")
	// ErrConflict indicates a unique key (order number, SKU) is already taken.
	ErrConflict = errors.New("service: conflict / 数据冲突")
)

// mapRepoError translates repository sentinels into service sentinels.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}
