package service

import (
	"context"
	"errors"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/email"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/repository/purchase"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/repository/wallet"
	"learnhub/biz/infrastructure/util/log"
	"math"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/wire"
)

type IPurchaseService interface {
	// CreatePurchase 同一用户同一课程只有一条购买记录，重复调用会继续推进未完成的记录
	CreatePurchase(ctx context.Context, req *core.CreatePurchaseReq) (*core.CreatePurchaseResp, error)
	ListPurchases(ctx context.Context, req *core.ListPurchasesReq) (*core.ListPurchasesResp, error)
	// RecoverPurchases 推进 before 之前停在中间状态的购买，返回完成的数量
	RecoverPurchases(ctx context.Context, before time.Time) (int, error)
}

type PurchaseService struct {
	UserMapper     user.IMongoMapper
	CourseMapper   course.IMongoMapper
	PurchaseMapper purchase.IMongoMapper
	ProgressMapper purchase.IProgressMongoMapper
	WalletMapper   wallet.IMapper
	CourseService  ICourseService
	ChatService    IChatService
	EmailSender    email.ISender
	Transactor     mongox.ITransactor
}

var PurchaseServiceSet = wire.NewSet(
	wire.Struct(new(PurchaseService), "*"),
	wire.Bind(new(IPurchaseService), new(*PurchaseService)),
)

// instructorShare 讲师所得，沿用 |price*rate - price|，即售价的 90%
func instructorShare(price float64) float64 {
	return math.Abs(price*consts.PlatformFeeRate - price)
}

func (s *PurchaseService) CreatePurchase(ctx context.Context, req *core.CreatePurchaseReq) (*core.CreatePurchaseResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	c, err := findCourse(ctx, s.CourseMapper, req.CourseID)
	if err != nil {
		return nil, err
	}
	if c.InstructorID == u.ID.Hex() {
		return nil, consts.ErrPurchaseOwnCourse
	}

	p, err := s.PurchaseMapper.FindOneByUserAndCourse(ctx, u.ID.Hex(), c.ID.Hex())
	switch {
	case err == nil:
		log.CtxInfo(ctx, "购买记录已存在, purchaseId=%s, status=%s", p.ID.Hex(), p.Status)
	case errors.Is(err, consts.ErrNotFound):
		if c.Status != consts.CourseStatusApproved || !c.IsPublished {
			return nil, consts.ErrNotFound
		}
		if p, err = s.insert(ctx, u.ID.Hex(), c); err != nil {
			return nil, err
		}
	default:
		return nil, consts.Upstream(err)
	}

	if err = s.advance(ctx, p, c); err != nil {
		log.CtxError(ctx, "推进购买失败, purchaseId=%s, status=%s, err=%v", p.ID.Hex(), p.Status, err)
		return nil, err
	}
	return &core.CreatePurchaseResp{Purchase: toDTO[core.Purchase](p)}, nil
}

// insert 并发重复购买由唯一索引兜底，冲突时返回已有记录
func (s *PurchaseService) insert(ctx context.Context, userID string, c *course.Course) (*purchase.Purchase, error) {
	p := &purchase.Purchase{
		UserID:   userID,
		CourseID: c.ID.Hex(),
		Amount:   c.Price,
		Currency: c.Currency,
		Status:   consts.PurchaseStatusPending,
	}
	err := s.PurchaseMapper.Insert(ctx, p)
	if errors.Is(err, consts.ErrDuplicate) {
		p, err = s.PurchaseMapper.FindOneByUserAndCourse(ctx, userID, c.ID.Hex())
	}
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return p, nil
}

// advance 从当前状态依次执行剩余步骤，每一步完成后持久化状态
func (s *PurchaseService) advance(ctx context.Context, p *purchase.Purchase, c *course.Course) error {
	for p.Status != consts.PurchaseStatusComplete {
		var err error
		switch p.Status {
		case consts.PurchaseStatusPending:
			err = s.enroll(ctx, p)
		case consts.PurchaseStatusEnrolled:
			err = s.provisionChat(ctx, p, c)
		case consts.PurchaseStatusChatProvisioned:
			err = s.complete(ctx, p, c)
		default:
			return consts.ErrStatusTransition
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *PurchaseService) transit(ctx context.Context, p *purchase.Purchase, to string) error {
	ok, err := s.PurchaseMapper.TransitStatus(ctx, p.ID.Hex(), p.Status, to)
	if err != nil {
		return consts.Upstream(err)
	}
	if !ok {
		return consts.ErrStatusTransition
	}
	p.Status = to
	return nil
}

// enroll 报名相关写入与状态迁移在同一事务中，状态迁移失败则整体回滚。
// 未开启事务时各步骤均可重放：引用走 $addToSet，入账以购买ID去重
func (s *PurchaseService) enroll(ctx context.Context, p *purchase.Purchase) error {
	return s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ProgressMapper.Start(ctx, p.UserID, p.CourseID); err != nil {
			return consts.Upstream(err)
		}
		if err := s.UserMapper.Push(ctx, p.UserID, user.FieldEnrolledCourses, p.CourseID); err != nil {
			return consts.Upstream(err)
		}
		if err := s.CourseService.PushStudentToCourse(ctx, p.CourseID, p.UserID); err != nil {
			return err
		}
		if err := s.CourseMapper.Push(ctx, p.CourseID, course.FieldPurchases, p.ID.Hex()); err != nil {
			return consts.Upstream(err)
		}
		if err := s.UserMapper.Push(ctx, p.UserID, user.FieldPurchases, p.ID.Hex()); err != nil {
			return consts.Upstream(err)
		}
		// 以最新价格入账
		c, err := findCourse(ctx, s.CourseMapper, p.CourseID)
		if err != nil {
			return err
		}
		credited, err := s.UserMapper.CreditWallet(ctx, c.InstructorID, p.ID.Hex(), instructorShare(c.Price))
		if err != nil {
			return consts.Upstream(err)
		}
		if !credited {
			log.CtxInfo(ctx, "购买已入账，跳过, purchaseId=%s", p.ID.Hex())
		}
		return s.transit(ctx, p, consts.PurchaseStatusEnrolled)
	})
}

func (s *PurchaseService) provisionChat(ctx context.Context, p *purchase.Purchase, c *course.Course) error {
	if c.CourseType == consts.CourseTypeRegular {
		if _, err := s.ChatService.EnsurePrivateChatRoom(ctx, p.CourseID, p.UserID, c.InstructorID); err != nil {
			return consts.Upstream(err)
		}
	}
	return s.transit(ctx, p, consts.PurchaseStatusChatProvisioned)
}

// complete 流水与邮件失败只记录日志
func (s *PurchaseService) complete(ctx context.Context, p *purchase.Purchase, c *course.Course) error {
	_, err := s.WalletMapper.Insert(ctx, &wallet.Transaction{
		UserID:     c.InstructorID,
		PurchaseID: p.ID.Hex(),
		CourseID:   p.CourseID,
		Amount:     instructorShare(c.Price),
		Currency:   c.Currency,
	})
	bestEffort(ctx, "write wallet ledger", err)

	if err = s.transit(ctx, p, consts.PurchaseStatusComplete); err != nil {
		return err
	}

	mailCtx := context.WithoutCancel(ctx)
	gopool.Go(func() {
		student, err := s.UserMapper.FindOne(mailCtx, p.UserID)
		if err != nil {
			log.CtxError(mailCtx, "发送报名邮件失败, userId=%s, err=%v", p.UserID, err)
			return
		}
		err = s.EmailSender.Send(mailCtx, email.EnrollmentMessage(student.Username, student.Email, c.Title))
		bestEffort(mailCtx, "send enrollment email", err)
	})
	return nil
}

func (s *PurchaseService) ListPurchases(ctx context.Context, req *core.ListPurchasesReq) (*core.ListPurchasesResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	p := req.PaginationOptions
	purchases, total, err := s.PurchaseMapper.FindByUser(ctx, u.ID.Hex(), p.GetPage(), p.GetLimit())
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ListPurchasesResp{Purchases: toDTOs[core.Purchase](purchases), Total: total}, nil
}

func (s *PurchaseService) RecoverPurchases(ctx context.Context, before time.Time) (int, error) {
	purchases, err := s.PurchaseMapper.FindUnfinished(ctx, before)
	if err != nil {
		return 0, consts.Upstream(err)
	}

	var (
		n    int
		errs []error
	)
	for _, p := range purchases {
		c, err := findCourse(ctx, s.CourseMapper, p.CourseID)
		if errors.Is(err, consts.ErrNotFound) {
			log.CtxInfo(ctx, "课程已删除，跳过购买, purchaseId=%s", p.ID.Hex())
			continue
		}
		if err == nil {
			err = s.advance(ctx, p, c)
		}
		if err != nil {
			log.CtxError(ctx, "恢复购买失败, purchaseId=%s, status=%s, err=%v", p.ID.Hex(), p.Status, err)
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}
