package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// DenyMessage is shown to non-administrators
const DenyMessage = "⛔ This action is available to the administrator only."

// AdminOnly lets the update through only when isAdmin accepts the sender
func AdminOnly(isAdmin func(userID int64) bool, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user != nil && isAdmin(user.ID) {
				return next(c)
			}

			var userID int64
			if user != nil {
				userID = user.ID
			}
			logger.Info("Admin action denied", zap.Int64("user_id", userID))

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: DenyMessage, ShowAlert: true})
			}
			return c.Send(DenyMessage)
		}
	}
}
