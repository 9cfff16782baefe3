// Package memstore 进程内文档存储，供 memory 模式与单元测试使用
package memstore

import (
	"sort"
	"sync"

	"learnhub/biz/infrastructure/consts"

	"go.mongodb.org/mongo-driver/bson"
)

// Store 以 hex id 为键保存文档，读写都做深拷贝，调用方拿到的对象与存储互不影响
type Store[T any] struct {
	mu   sync.RWMutex
	docs map[string]*T
	// order 记录插入顺序，保证遍历稳定
	order []string
}

func New[T any]() *Store[T] {
	return &Store[T]{docs: make(map[string]*T)}
}

// clone 用 bson 编解码做深拷贝，与落库后再读出的效果一致
func clone[T any](src *T) *T {
	data, err := bson.Marshal(src)
	if err != nil {
		panic(err)
	}
	dst := new(T)
	if err = bson.Unmarshal(data, dst); err != nil {
		panic(err)
	}
	return dst
}

func (s *Store[T]) Insert(id string, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; ok {
		return consts.ErrDuplicate
	}
	s.docs[id] = clone(doc)
	s.order = append(s.order, id)
	return nil
}

// InsertUnique 在同一把锁内检查唯一约束后插入
func (s *Store[T]) InsertUnique(id string, doc *T, conflict func(*T) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if conflict(d) {
			return consts.ErrDuplicate
		}
	}
	if _, ok := s.docs[id]; ok {
		return consts.ErrDuplicate
	}
	s.docs[id] = clone(doc)
	s.order = append(s.order, id)
	return nil
}

func (s *Store[T]) Get(id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return clone(d), nil
}

// Mutate 在写锁内修改单个文档，对应 mongo 单文档原子更新
func (s *Store[T]) Mutate(id string, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return consts.ErrNotFound
	}
	return fn(d)
}

// MutateWhere 修改所有满足条件的文档，返回修改数量
func (s *Store[T]) MutateWhere(match func(*T) bool, fn func(*T)) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range s.order {
		d := s.docs[id]
		if match(d) {
			fn(d)
			n++
		}
	}
	return n
}

func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return consts.ErrNotFound
	}
	s.remove(id)
	return nil
}

func (s *Store[T]) DeleteWhere(match func(*T) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, id := range s.order {
		if match(s.docs[id]) {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		s.remove(id)
	}
	return int64(len(ids))
}

func (s *Store[T]) remove(id string) {
	delete(s.docs, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store[T]) FindOne(match func(*T) bool) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if d := s.docs[id]; match(d) {
			return clone(d), nil
		}
	}
	return nil, consts.ErrNotFound
}

// Find 返回满足条件的文档，less 为空时按插入顺序
func (s *Store[T]) Find(match func(*T) bool, less func(a, b *T) bool) []*T {
	s.mu.RLock()
	res := make([]*T, 0)
	for _, id := range s.order {
		if d := s.docs[id]; match == nil || match(d) {
			res = append(res, clone(d))
		}
	}
	s.mu.RUnlock()
	if less != nil {
		sort.SliceStable(res, func(i, j int) bool { return less(res[i], res[j]) })
	}
	return res
}

func (s *Store[T]) Count(match func(*T) bool) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, d := range s.docs {
		if match == nil || match(d) {
			n++
		}
	}
	return n
}

// Page 对结果切片做分页
func Page[T any](items []*T, skip, limit int64) []*T {
	if skip >= int64(len(items)) {
		return []*T{}
	}
	end := skip + limit
	if limit <= 0 || end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[skip:end]
}
