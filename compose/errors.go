package compose

import "fmt"

// Stage 标记合成流程中的阶段。
type Stage string

const (
	StageBackground Stage = "background"
	StageMeasure    Stage = "measure"
	StageAvatar     Stage = "avatar"
	StageCharts     Stage = "charts"
	StagePlace      Stage = "place"
	StageRender     Stage = "render"
)

// RenderError 是合成失败时返回的唯一错误类型。Stack 仅在 panic 时存在。
type RenderError struct {
	Stage Stage
	Err   error
	Stack []byte
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s 阶段失败: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
