package dto

import "time"

// FileUploadResponse POST /api/v1/files/upload.
type FileUploadResponse struct {
	FileID       string `json:"file_id"`
	OriginalName string `json:"original_name"`
	FilePath     string `json:"file_path"`
	FileSize     int64  `json:"file_size"`
	FileType     string `json:"file_type"`
}

// FileInfo one stored file in the listing.
type FileInfo struct {
	FileID     string    `json:"file_id"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type FileListResponse struct {
	Items []FileInfo `json:"items"`
	Total int        `json:"total"`
}

// ImportResultResponse result of a tender import. TenderIDs is filled by
// the bulk import, TenderID by the single-tender import.
type ImportResultResponse struct {
	Message   string  `json:"message"`
	TenderID  int64   `json:"tender_id,omitempty"`
	TenderIDs []int64 `json:"tender_ids,omitempty"`
}
