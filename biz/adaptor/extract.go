package adaptor

import (
	"context"
	"errors"
	"learnhub/biz/application/dto/basic"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util"
	"learnhub/biz/infrastructure/util/log"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
)

type contextKey string

const (
	hertzContext contextKey = "hertz_context"
	userMetaKey  contextKey = "user_meta"
)

func InjectContext(ctx context.Context, c *app.RequestContext) context.Context {
	return context.WithValue(ctx, hertzContext, c)
}

func ExtractContext(ctx context.Context) (*app.RequestContext, error) {
	c, ok := ctx.Value(hertzContext).(*app.RequestContext)
	if !ok {
		return nil, errors.New("hertz context not found")
	}
	return c, nil
}

// WithUserMeta 直接放入已校验的用户信息，webhook 与测试使用
func WithUserMeta(ctx context.Context, meta *basic.UserMeta) context.Context {
	return context.WithValue(ctx, userMetaKey, meta)
}

func ExtractUserMeta(ctx context.Context) (user *basic.UserMeta) {
	if meta, ok := ctx.Value(userMetaKey).(*basic.UserMeta); ok && meta != nil {
		return meta
	}
	user = new(basic.UserMeta)
	var err error
	defer func() {
		if err != nil {
			log.CtxInfo(ctx, "extract user meta fail, err=%v", err)
		}
	}()
	c, err := ExtractContext(ctx)
	if err != nil {
		return
	}
	meta, err := ParseUserMeta(string(c.GetHeader("Authorization")))
	if err != nil {
		return
	}
	log.CtxInfo(ctx, "userMeta=%s", util.JSONF(meta))
	return meta
}

// ParseUserMeta 校验身份提供方签发的 ES256 令牌
/*
生成 ECDSA 私钥: openssl ecparam -genkey -name prime256v1 -noout -out private_key.pem
从私钥中提取公钥: openssl ec -in private_key.pem -pubout -out public_key.pem
*/
func ParseUserMeta(tokenString string) (*basic.UserMeta, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwt.ParseECPublicKeyFromPEM([]byte(config.GetConfig().Auth.PublicKey))
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token is not valid")
	}
	user := new(basic.UserMeta)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           user,
	})
	if err != nil {
		return nil, err
	}
	if err = decoder.Decode(map[string]any(claims)); err != nil {
		return nil, err
	}
	if user.UserId == "" {
		return nil, errors.New("token has no subject")
	}
	return user, nil
}
