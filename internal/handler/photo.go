package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"aibot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handlePhoto describes the largest size of an incoming photo
func (h *Handler) handlePhoto(c tele.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	userID := c.Sender().ID

	if int64(photo.FileSize) > service.MaxImageBytes {
		h.logger.Info("Photo rejected by declared size",
			zap.Int64("user_id", userID),
			zap.Int64("size", int64(photo.FileSize)),
		)
		return c.Send(msgImageTooLarge)
	}

	_ = c.Notify(tele.Typing)

	data, err := h.download(&photo.File)
	if err != nil {
		return h.replyError(c, "download", err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	desc, err := h.ai.DescribeImage(ctx, data, mimeType, c.Message().Caption)
	if err != nil {
		return h.replyError(c, "image", err)
	}
	return h.sendLong(c, msgImageHeader+desc)
}

// download reads at most MaxImageBytes+1 bytes so that oversized files are
// detected without buffering them entirely.
func (h *Handler) download(file *tele.File) ([]byte, error) {
	if h.files == nil {
		return nil, errors.New("no file downloader configured")
	}

	rc, err := h.files.File(file)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, service.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(data) > service.MaxImageBytes {
		return nil, service.ErrImageTooLarge
	}
	return data, nil
}
