package main

import (
	"Nova_Tube/internal/data"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"Nova_Tube/pkg/rabbitmq"
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：连接mysql和rabbitMQ，把观看事件异步落库
// 一条观看事件 = 一条观看历史 + 播放量+1，两个写必须在同一个事务里
func main() {
	_ = godotenv.Load()
	logger.InitLogger()

	// 连接数据库
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/nova_tube?charset=utf8mb4&parseTime=True&loc=Local"
	}
	db, err := gorm.Open(gorm_mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}
	// 连接RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()

	videoRepo := repository.NewVideoRepository(db, nil)
	watchRepo := repository.NewWatchRepository(db)
	uow := data.NewUnitOfWork(db, videoRepo, watchRepo)

	consumeViews(rabbitMQConn, uow)
}

// 观看事件消费者：1、通过mq的TCP连接创建channel 2、注册消费者 3、循环消费消息
// 4、工作单元里写观看历史+加播放量，根据结果决定Ack/Nack
func consumeViews(conn *amqp.Connection, uow data.UnitOfWork) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 声明和生产者侧保持一致，谁先启动都不会出错
	_, err = ch.QueueDeclare(service.QueueView, true, false, false, false, nil)
	if err != nil {
		logger.Log.Fatalf("无法声明观看事件队列: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueView, // queue
		"",                // consumer
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册观看事件消费者: %v", err)
	}
	// 创建一个没有任何缓冲的bool类型通道
	forever := make(chan bool)

	go func() {
		// msgs不是切片，而是通道channel，如果通道为空不会结束循环，而会“阻塞”
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条观看事件")

			var msg service.ViewMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("消息JSON解析失败")
				// 无法解析的“坏消息”，通知mq处理失败并直接删除
				d.Nack(false, false)
				continue
			}

			// 使用“工作单元”来执行事务性操作：任一步失败整个事务回滚
			// 消费者不在任何请求的生命周期里，没有上游deadline，用Background
			ctx := context.Background()
			err := uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
				record := &model.WatchRecord{UserID: msg.UserID, VideoID: msg.VideoID}
				if err := repos.WatchRepo.Append(ctx, record); err != nil {
					return err
				}
				return repos.VideoRepo.IncrementViews(ctx, msg.VideoID)
			})

			// 根据数据库操作的结果，来决定如何“确认”消息
			if err != nil {
				var mysqlErr *mysql.MySQLError
				// 用errors.As来检查错误的“根”是不是一个MySQLError
				if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
					// 错误号 1062 就是 "Duplicate entry"，说明是一次重复消费
					logCtx.WithError(err).Warn("处理消息时出现重复键错误，可能是一次重复消费，消息将被确认为成功。")
					d.Ack(false)
				} else {
					// 其他类型错误，才要求重试
					logCtx.WithError(err).Error("处理消息失败，将进行重试")
					d.Nack(false, true)
				}
			} else {
				d.Ack(false)
			}
		}
	}()
	logger.Log.Info(" [*] 等待观看事件中. 按 CTRL+C 退出")
	// 尝试从forever通道里接收一个值，但没有发送者，这会阻止main函数退出
	<-forever
}
