package framework

// FanOut runs action n times concurrently and returns every response once all of them
// have completed. Responses are in index order, regardless of completion order.
func FanOut(n int, action func(i int) Response) []Response {
	type indexed struct {
		i    int
		resp Response
	}
	ch := make(chan indexed, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			ch <- indexed{i: i, resp: action(i)}
		}(i)
	}
	ret := make([]Response, n)
	for received := 0; received < n; received++ {
		item := <-ch
		ret[item.i] = item.resp
	}
	return ret
}

// CountReachable returns how many responses had any HTTP status at all.
func CountReachable(responses []Response) int {
	n := 0
	for _, r := range responses {
		if r.Reachable() {
			n++
		}
	}
	return n
}

// CountStatus returns how many responses had one of the given status codes.
func CountStatus(responses []Response, codes ...int) int {
	n := 0
	for _, r := range responses {
		if r.StatusIn(codes...) {
			n++
		}
	}
	return n
}
