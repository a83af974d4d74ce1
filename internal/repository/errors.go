// 文件路径: internal/repository/errors.go
package repository

import "errors"

var (
	// ErrNotFound 表示查询未返回数据。
	ErrNotFound = errors.New("not found / 未找到数据")
	// ErrConflict 表示唯一约束冲突（例如重复的订单号）。
	ErrConflict = errors.New("conflict / 数据已存在")
)
