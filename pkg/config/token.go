package config

type TokenConf struct {
	ContextTimeout         int
	AccessTokenExpiryHour  int
	RefreshTokenExpiryHour int
	AccessTokenSecret      string
	RefreshTokenSecret     string
}

func NewTokenConf() *TokenConf {
	c := GetConfig()
	return &TokenConf{
		ContextTimeout:         2,
		AccessTokenExpiryHour:  1,
		RefreshTokenExpiryHour: 168,
		AccessTokenSecret:      c.Auth.AccessTokenSecret,
		RefreshTokenSecret:     c.Auth.RefreshTokenSecret,
	}
}
