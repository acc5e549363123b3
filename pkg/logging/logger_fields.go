package logging

import (
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Overlay fields

func Component(name string) Field {
	return String("component", name)
}

func EdgeID(id uint64) Field {
	return Uint64("edge_id", id)
}

func Expression(expr string) Field {
	return String("expression", expr)
}

func Symbol(name string) Field {
	return String("symbol", name)
}

func Symbols(names []string) Field {
	return Any("symbols", names)
}

func RequestID(id string) Field {
	return String("request_id", id)
}

func Volume(v float64) Field {
	return Float64("volume", v)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}
