package dto

// ==================== 评价 ====================

// SubmitReviewRequest 提交评价请求
// 同一用户对同一本书重复提交是覆盖而非新增
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"omitempty,max=1000"`
}
