// Package ledger 维护已收录文章标题的持久化账本，供 gateway 去重。
// 账本是一份有序的标题序列：准入检查时整体读入，一次准入流程内只在
// 内存中追加，流程结束统一写回。
package ledger

import "context"

// Store 账本的持久化后端。读不到或数据损坏时按空历史处理，不报错，
// 去重从头开始而不是让 gateway 挂掉
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, titles []string) error
}

// Rotate 粗粒度的轮转策略：超过上限时整体清空而非逐条淘汰。
// 清空后此前见过的标题会被重新收录，这是有意的内存上限换取实现简单
func Rotate(titles []string, max int) []string {
	if len(titles) > max {
		return []string{}
	}
	return titles
}
