package service

import (
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dtoOption 模型转接口结构：ObjectID 转 hex，时间转毫秒时间戳
var dtoOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: primitive.ObjectID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(primitive.ObjectID).Hex(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src interface{}) (interface{}, error) {
				return src.(time.Time).UnixMilli(), nil
			},
		},
	},
}

// toDTO 转换失败说明结构体定义有误，直接 panic
func toDTO[D any, M any](m *M) *D {
	if m == nil {
		return nil
	}
	d := new(D)
	if err := copier.CopyWithOption(d, m, dtoOption); err != nil {
		panic(err)
	}
	return d
}

func toDTOs[D any, M any](ms []*M) []*D {
	ds := make([]*D, 0, len(ms))
	for _, m := range ms {
		ds = append(ds, toDTO[D](m))
	}
	return ds
}
