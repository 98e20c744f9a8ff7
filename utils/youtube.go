package utils

import (
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const oEmbedURL = "https://www.youtube.com/oembed"

// YouTubeThumbnail resolves the thumbnail of a YouTube video through the
// oEmbed endpoint. Non-YouTube URLs and lookup failures return "".
func YouTubeThumbnail(videoURL string) string {
	if !IsYouTubeURL(videoURL) {
		return ""
	}

	client := resty.New().SetTimeout(5 * time.Second)
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		Get(oEmbedURL)
	if err != nil {
		log.Printf("Error fetching oEmbed data for %s: %v", videoURL, err)
		return ""
	}
	if resp.IsError() {
		return ""
	}

	var payload struct {
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		log.Printf("Error parsing oEmbed data for %s: %v", videoURL, err)
		return ""
	}
	return payload.ThumbnailURL
}

// IsYouTubeURL reports whether the URL points at a YouTube host.
func IsYouTubeURL(videoURL string) bool {
	u, err := url.Parse(videoURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == "youtube.com" || host == "m.youtube.com" || host == "youtu.be"
}
