package providers

import (
	"errors"

	"github.com/gookit/validate"

	"pingerconf/internal/structures"
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

	switch c.conf.Storage.Driver {
	case "file":
		if c.conf.Storage.FilePath == "" {
			return errors.New("storage.filePath is required for the file driver")
		}
	case "redis":
		if c.conf.Storage.RedisURL == "" {
			return errors.New("storage.redisUrl is required for the redis driver")
		}
	}
	return nil
}
