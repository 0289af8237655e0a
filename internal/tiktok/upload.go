package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

type postInfo struct {
	Title                 string `json:"title"`
	PrivacyLevel          string `json:"privacy_level"`
	DisableDuet           bool   `json:"disable_duet"`
	DisableComment        bool   `json:"disable_comment"`
	DisableStitch         bool   `json:"disable_stitch"`
	VideoCoverTimestampMS int    `json:"video_cover_timestamp_ms"`
}

type sourceInfo struct {
	Source          string `json:"source"`
	VideoSize       int64  `json:"video_size"`
	ChunkSize       int64  `json:"chunk_size"`
	TotalChunkCount int    `json:"total_chunk_count"`
}

type initRequest struct {
	PostInfo   postInfo   `json:"post_info"`
	SourceInfo sourceInfo `json:"source_info"`
}

type initResponse struct {
	Data struct {
		PublishID string `json:"publish_id"`
		UploadURL string `json:"upload_url"`
	} `json:"data"`
	Error *apiError `json:"error"`
}

// UploadVideo publishes video in two phases: init, then a single-chunk PUT to the returned URL.
// onProgress receives 10, 30 and 100 as the phases complete.
func (c *Client) UploadVideo(ctx context.Context, token string, video io.Reader, size int64, caption string, onProgress func(int)) error {
	progress := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	progress(10)

	uploadURL, err := c.initUpload(ctx, token, size, caption)
	if err != nil {
		return err
	}

	progress(30)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, video)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "video/mp4")
	if size > 0 {
		req.Header.Set("Content-Range", fmt.Sprintf("bytes 0-%d/%d", size-1, size))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("TikTok upload error (status %d): %s", resp.StatusCode, string(body))
		return fmt.Errorf("video upload failed with status %d", resp.StatusCode)
	}

	progress(100)
	return nil
}

func (c *Client) initUpload(ctx context.Context, token string, size int64, caption string) (string, error) {
	reqBody := initRequest{
		PostInfo: postInfo{
			Title:                 caption,
			PrivacyLevel:          "SELF_ONLY",
			VideoCoverTimestampMS: 1000,
		},
		SourceInfo: sourceInfo{
			Source:          "FILE_UPLOAD",
			VideoSize:       size,
			ChunkSize:       size,
			TotalChunkCount: 1,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/post/publish/video/init/", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to init upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("TikTok init error (status %d): %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("upload init failed with status %d", resp.StatusCode)
	}

	var apiResp initResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if !apiResp.Error.ok() {
		return "", fmt.Errorf("upload init rejected: %s - %s", apiResp.Error.Code, apiResp.Error.Message)
	}
	if apiResp.Data.UploadURL == "" {
		return "", fmt.Errorf("upload init returned no upload_url")
	}

	return apiResp.Data.UploadURL, nil
}
