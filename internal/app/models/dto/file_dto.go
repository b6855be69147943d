package dto

// UploadFileRequest holds the non-file fields of the multipart upload form
type UploadFileRequest struct {
	Course      int64  `form:"course" binding:"required,min=1"`
	FileType    string `form:"fileType" binding:"required,filetype"`
	Description string `form:"description" binding:"max=1000"`
	Tags        string `form:"tags"`
}

// ReclassifyFileRequest changes the classification of an uploaded file
type ReclassifyFileRequest struct {
	FileType       string `json:"fileType" binding:"required,filetype"`
	IsNBACompliant *bool  `json:"isNBACompliant,omitempty"`
}
