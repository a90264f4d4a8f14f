package scheduler

import (
	"context"
	"log"
	"sync"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/robfig/cron/v3"
)

// Scheduler 按固定 cron 周期驱动一轮「采集→推送」。上一轮还没结束时
// 直接跳过本次触发，避免两轮并发抓取同一批源
type Scheduler struct {
	cron    *cron.Cron
	fetcher *collector.Fetcher
	pusher  *collector.Pusher
	running sync.Mutex
}

func New(spec string, fetcher *collector.Fetcher, pusher *collector.Pusher) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		fetcher: fetcher,
		pusher:  pusher,
	}

	if _, err := c.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止后续触发并等待进行中的一轮结束
func (s *Scheduler) Stop(ctx context.Context) {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		log.Println("scheduler: stop timed out, cycle still in flight")
	}
}

// RunOnce 对外暴露的单次执行入口，方便手动触发采集
func (s *Scheduler) RunOnce() {
	s.runCycle()
}

func (s *Scheduler) tick() {
	if !s.running.TryLock() {
		log.Println("previous cycle still running, skip this tick")
		return
	}
	defer s.running.Unlock()
	s.runCycle()
}

func (s *Scheduler) runCycle() {
	log.Println("start fetch cycle...")

	batch := s.fetcher.FetchAll()
	log.Printf("fetched %d candidate articles", len(batch))

	if err := s.pusher.Push(batch); err != nil {
		// 批次直接丢弃，不重试也不落盘，下一轮重新采集
		log.Printf("push batch: %v", err)
		return
	}
	log.Println("fetch cycle done")
}
