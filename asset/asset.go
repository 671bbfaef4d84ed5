// Package asset 描述可降级资源（字体、头像、背景）的加载结果。
package asset

// Status 区分资源是正常加载、回退到内置默认值，还是彻底失败。
type Status int

const (
	Loaded Status = iota
	FellBack
	Failed
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case FellBack:
		return "fell-back"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText 让状态在 JSON 与日志中以名称出现。
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result 携带资源值及其来源状态。回退时 Err 记录原始失败原因，可能为空。
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// Ok 返回正常加载的结果。
func Ok[T any](v T) Result[T] { return Result[T]{Value: v, Status: Loaded} }

// Fallback 返回使用默认值的结果，cause 为触发回退的错误。
func Fallback[T any](v T, cause error) Result[T] {
	return Result[T]{Value: v, Status: FellBack, Err: cause}
}

// Fail 返回没有可用值的结果。
func Fail[T any](err error) Result[T] {
	var zero T
	return Result[T]{Value: zero, Status: Failed, Err: err}
}

// Usable 报告结果是否带有可用的值。
func (r Result[T]) Usable() bool { return r.Status != Failed }
