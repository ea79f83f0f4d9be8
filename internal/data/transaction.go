package data

import (
	"Nova_Tube/internal/repository"
	"context"

	"gorm.io/gorm"
)

// UnitOfWork 定义了我们事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行。
	// 它会为这个函数提供能在事务中工作的 Repositories。
	// 传入的context约束整个事务，超时会让事务连同里面的SQL一起被取消回滚。
	Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository。
// 目前只有观看事件消费者用它：写观看记录和加播放量必须一起成功或一起失败。
type TransactionalRepositories struct {
	VideoRepo repository.VideoRepository
	WatchRepo repository.WatchRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db        *gorm.DB
	videoRepo repository.VideoRepository
	watchRepo repository.WatchRepository
}

// NewUnitOfWork 创建一个新的、基于GORM的“工作单元”。
// 注意，它接收的是原始的、非事务的 repositories。
func NewUnitOfWork(db *gorm.DB, videoRepo repository.VideoRepository, watchRepo repository.WatchRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:        db,
		videoRepo: videoRepo,
		watchRepo: watchRepo,
	}
}

// 契约：fn func(repos *TransactionalRepositories) error
// 只能接收长这样的函数，并为其创建事务；将绑定了事务的Repositories作为参数“注入”进去
func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error {
	// GORM创建了一个事务，并把这个事务的句柄作为参数tx传递给了这个匿名函数
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 临时创建“一次性”的、绑定了特定事务的Repo副本
		transactionalRepos := &TransactionalRepositories{
			VideoRepo: u.videoRepo.WithTx(tx),
			WatchRepo: u.watchRepo.WithTx(tx),
		}
		// 回调结构（Callback），执行调用者托付的业务逻辑，其结果决定整个事务提交还是回滚
		return fn(transactionalRepos)
	})
}
