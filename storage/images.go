package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"sort"
	"strings"
)

var ErrImageNotFound = errors.New("image not found")

// ImageSource - откуда берутся картинки по умолчанию (локальный каталог или бакет R2).
type ImageSource interface {
	// List возвращает ключи с данным префиксом в лексикографическом порядке.
	List(ctx context.Context, prefix string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// DefaultImages загружается один раз при старте и дальше только читается.
type DefaultImages struct {
	TeamLogos   []string
	PlayerPhoto string
}

type DefaultsLayout struct {
	TeamLogosPrefix string
	PlayerPhotoKey  string
}

func DefaultLayout() DefaultsLayout {
	return DefaultsLayout{
		TeamLogosPrefix: "logos/",
		PlayerPhotoKey:  "players/default.png",
	}
}

// LoadDefaults читает логотипы и фото игрока из src и кодирует их в data URI.
// Отсутствие фото игрока не ошибка: поле просто остаётся пустым.
func LoadDefaults(ctx context.Context, src ImageSource, layout DefaultsLayout) (*DefaultImages, error) {
	keys, err := src.List(ctx, layout.TeamLogosPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list team logos: %w", err)
	}
	sort.Strings(keys)

	images := &DefaultImages{TeamLogos: make([]string, 0, len(keys))}
	for _, key := range keys {
		data, contentType, err := src.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read team logo %s: %w", key, err)
		}
		images.TeamLogos = append(images.TeamLogos, dataURI(key, contentType, data))
	}

	data, contentType, err := src.Get(ctx, layout.PlayerPhotoKey)
	switch {
	case err == nil:
		images.PlayerPhoto = dataURI(layout.PlayerPhotoKey, contentType, data)
	case errors.Is(err, ErrImageNotFound):
	default:
		return nil, fmt.Errorf("failed to read player photo: %w", err)
	}
	return images, nil
}

func dataURI(key, contentType string, data []byte) string {
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detectContentType(key, data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func detectContentType(key string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
