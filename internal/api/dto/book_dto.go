package dto

// ==================== 图书维护（管理员） ====================

// CreateBookRequest 新建图书请求
// Categories / Tags 是名称数组，后端按 trim 后的名称 get-or-create 再全量同步关联
type CreateBookRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Author      string   `json:"author" binding:"omitempty,max=255"`
	Description string   `json:"description" binding:"omitempty"`
	Year        int      `json:"year" binding:"omitempty,gte=0"`
	Quantity    int      `json:"quantity" binding:"omitempty,gte=0"`
	Price       *int64   `json:"price" binding:"required,gte=0"`
	Publisher   string   `json:"publisher" binding:"omitempty,max=255"`
	Categories  []string `json:"categories" binding:"omitempty,dive,max=255"`
	Tags        []string `json:"tags" binding:"omitempty,dive,max=255"`
	Image       string   `json:"image" binding:"omitempty,max=255"`
}

// UpdateBookRequest 更新图书请求，全部字段可选
// Categories / Tags 一旦提交即按 sync 语义全量替换
type UpdateBookRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Author      *string  `json:"author" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty"`
	Year        *int     `json:"year" binding:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
	Price       *int64   `json:"price" binding:"omitempty,gte=0"`
	Publisher   *string  `json:"publisher" binding:"omitempty,max=255"`
	Categories  []string `json:"categories" binding:"omitempty,dive,max=255"`
	Tags        []string `json:"tags" binding:"omitempty,dive,max=255"`
	Image       *string  `json:"image" binding:"omitempty,max=255"`
}
