package providers

import (
	"errors"
	"github.com/gookit/validate"
	"meetup/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}

	st := c.conf.Storage
	switch st.Driver {
	case "file":
		if st.FilePath == "" {
			return errors.New("storage.filePath is required for the file driver")
		}
	case "sqlite":
		if st.SQLitePath == "" {
			return errors.New("storage.sqlitePath is required for the sqlite driver")
		}
	case "redis":
		if len(st.Redis.Addrs) == 0 {
			return errors.New("storage.redis.addrs is required for the redis driver")
		}
	}
	return nil
}
