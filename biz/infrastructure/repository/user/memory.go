package user

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryMapper struct {
	store *memstore.Store[User]
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{store: memstore.New[User]()}
}

func (m *MemoryMapper) Insert(_ context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreateTime = time.Now()
		u.UpdateTime = u.CreateTime
	}
	return m.store.InsertUnique(u.ID.Hex(), u, func(d *User) bool {
		return u.ExternalID != "" && d.ExternalID == u.ExternalID
	})
}

func (m *MemoryMapper) Update(_ context.Context, u *User) error {
	u.UpdateTime = time.Now()
	return m.store.Mutate(u.ID.Hex(), func(old *User) error {
		old.Username, old.Email, old.Picture = u.Username, u.Email, u.Picture
		old.Role = u.Role
		old.Interests = append([]string(nil), u.Interests...)
		old.UpdateTime = u.UpdateTime
		return nil
	})
}

func (m *MemoryMapper) FindOne(_ context.Context, id string) (*User, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *MemoryMapper) FindOneByExternalID(_ context.Context, externalID string) (*User, error) {
	return m.store.FindOne(func(u *User) bool { return u.ExternalID == externalID })
}

func (m *MemoryMapper) Push(_ context.Context, id, field, ref string) error {
	return m.store.Mutate(id, func(u *User) error {
		refs := u.Refs(field)
		if refs == nil {
			return consts.ErrInvalidParams
		}
		if !lo.Contains(*refs, ref) {
			*refs = append(*refs, ref)
		}
		u.UpdateTime = time.Now()
		return nil
	})
}

func (m *MemoryMapper) Pull(_ context.Context, id, field, ref string) error {
	return m.store.Mutate(id, func(u *User) error {
		refs := u.Refs(field)
		if refs == nil {
			return consts.ErrInvalidParams
		}
		*refs = lo.Without(*refs, ref)
		u.UpdateTime = time.Now()
		return nil
	})
}

func (m *MemoryMapper) PullFromAll(_ context.Context, field, ref string) error {
	m.store.MutateWhere(func(u *User) bool {
		refs := u.Refs(field)
		return refs != nil && lo.Contains(*refs, ref)
	}, func(u *User) {
		refs := u.Refs(field)
		*refs = lo.Without(*refs, ref)
	})
	return nil
}

func (m *MemoryMapper) CreditWallet(_ context.Context, id, purchaseID string, amount float64) (bool, error) {
	if !primitive.IsValidObjectID(id) {
		return false, consts.ErrInvalidObjectId
	}
	credited := false
	err := m.store.Mutate(id, func(u *User) error {
		if lo.Contains(u.CreditedPurchases, purchaseID) {
			return nil
		}
		u.Wallet += amount
		u.CreditedPurchases = append(u.CreditedPurchases, purchaseID)
		u.UpdateTime = time.Now()
		credited = true
		return nil
	})
	return credited, err
}
