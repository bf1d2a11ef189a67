package catalog

// Result is the tagged union every client operation returns. No transport
// error, bad status or malformed payload ever crosses this boundary as a
// raw error; callers branch on Success and surface Error to the user.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Error: msg}
}
