package service

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContractLocker_Serializes 测试同一合同上的操作互斥执行
func TestContractLocker_Serializes(t *testing.T) {
	l := NewContractLocker()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("c-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 32, counter)
}

// TestContractLocker_IndependentContracts 测试不同合同的锁互不阻塞
func TestContractLocker_IndependentContracts(t *testing.T) {
	l := NewContractLocker()

	unlockA := l.Lock("c-a")
	unlockB := l.Lock("c-b")
	unlockB()
	unlockA()
}

// TestContractLocker_EvictsIdleEntries 测试锁条目在释放后被回收
func TestContractLocker_EvictsIdleEntries(t *testing.T) {
	l := NewContractLocker()

	for i := 0; i < 100; i++ {
		unlock := l.Lock(fmt.Sprintf("c-%d", i))
		unlock()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

// TestContractLocker_KeepsContendedEntries 测试存在等待者时条目不被提前回收
func TestContractLocker_KeepsContendedEntries(t *testing.T) {
	l := NewContractLocker()

	unlock := l.Lock("c-1")

	acquired := make(chan struct{})
	go func() {
		u := l.Lock("c-1")
		u()
		close(acquired)
	}()

	// 等待者登记后第一个持有者释放,条目此时仍在映射中
	for {
		l.mu.Lock()
		waiting := l.locks["c-1"] != nil && l.locks["c-1"].refs == 2
		l.mu.Unlock()
		if waiting {
			break
		}
		runtime.Gosched()
	}
	unlock()
	<-acquired

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}
