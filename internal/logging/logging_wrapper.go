package logging

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Handler is a fiber handler that can attach fields to the request log line.
type Handler func(c *fiber.Ctx, ld *LogData) error

// Wrap logs Handler.<name>.Start, then Complete or Error with the request
// duration and any fields the handler added. The handler's error is passed
// on to fiber's error handler.
func Wrap(name string, log logrus.FieldLogger, handler Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ld := NewLogData(log)
		log.Debugf("Handler.%v.Start", name)

		endTimer := ld.AddTiming("duration")
		err := handler(c, ld)
		endTimer()

		if err != nil {
			ld.Log().WithError(err).Errorf("Handler.%v.Error", name)
			return err
		}
		ld.Log().Infof("Handler.%v.Complete", name)
		return nil
	}
}
