package service

import (
	"sync"
)

// contractLock 单个合同的锁条目
// refs 统计持有者与等待者,归零后条目从映射中回收
type contractLock struct {
	mu   sync.Mutex
	refs int
}

// ContractLocker 按合同 ID 串行化变更操作
// 同一合同上的提交/审批/加评审人/评论互斥执行;授权守卫在持锁后复查,
// 避免并发下 "已评审" 等前置条件失效。
// 锁条目在最后一个使用者释放后回收,映射不随历史合同总量增长
type ContractLocker struct {
	mu    sync.Mutex
	locks map[string]*contractLock
}

// NewContractLocker 创建合同锁管理器
func NewContractLocker() *ContractLocker {
	return &ContractLocker{
		locks: make(map[string]*contractLock),
	}
}

// Lock 获取指定合同的互斥锁,返回解锁函数
func (l *ContractLocker) Lock(contractID string) func() {
	l.mu.Lock()
	e, ok := l.locks[contractID]
	if !ok {
		e = &contractLock{}
		l.locks[contractID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, contractID)
		}
		l.mu.Unlock()
	}
}
