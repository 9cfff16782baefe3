package page

// Skip 页码从 1 开始，非法页码按第一页处理
func Skip(page, pageSize int64) int64 {
	if page < 1 || pageSize < 1 {
		return 0
	}
	return (page - 1) * pageSize
}
