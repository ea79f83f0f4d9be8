package service

import (
	"context"
	"errors"
	"os"

	"github.com/go-sql-driver/mysql"
)

// 业务错误的统一分类，handler层用errors.Is把它们映射成HTTP状态码
// service内部把gorm.ErrRecordNotFound和MySQL的1062翻译到这里，不让存储细节漏到上层
var (
	ErrInvalidInput = errors.New("无效的参数")
	ErrUnauthorized = errors.New("未授权")
	ErrTokenReused  = errors.New("刷新令牌已失效，请重新登录")
	ErrNotFound     = errors.New("目标不存在")
	ErrForbidden    = errors.New("无权操作该资源")
	ErrConflict     = errors.New("并发写入冲突")
	ErrUnavailable  = errors.New("存储暂时不可用，请稍后再试")
	ErrInternal     = errors.New("内部错误")
)

// 判断是不是MySQL的“Duplicate entry”错误
// 错误号 1062 就是唯一索引冲突，并发写重复关系时数据库会替我们拦下来
func isDuplicateErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// 存储访问的最后一道翻译：请求context的超时/取消统一映射成ErrUnavailable
// 驱动层的读写超时以os.ErrDeadlineExceeded的形态冒出来，一并捕获；其余错误原样上抛
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrUnavailable
	}
	return err
}
