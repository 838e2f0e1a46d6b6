package probe

// escape receives the last value read by non-sink kernels. Writing it after
// the loop keeps every load in the loop live.
var escape int32

type scalar struct{}

func (scalar) Run(args *Args) {
	data := args.Data[:args.Count]
	var last int32
	for i := 0; i < len(data); i += args.Stride {
		last = data[i]
	}
	escape = last
}

type scalarSink struct{}

func (scalarSink) Run(args *Args) {
	data := args.Data[:args.Count]
	var sum int64
	for i := 0; i < len(data); i += args.Stride {
		sum += int64(data[i])
	}
	args.Sink = sum
}

type vector struct{}

func (vector) Run(args *Args) {
	data := args.Data[:args.Count]
	var last int32
	for i := 0; i+lanes <= len(data); i += args.Stride * lanes {
		lane := data[i : i+lanes : i+lanes]
		last = lane[0] ^ lane[1] ^ lane[2] ^ lane[3]
	}
	escape = last
}

type vectorSink struct{}

func (vectorSink) Run(args *Args) {
	data := args.Data[:args.Count]
	var s0, s1, s2, s3 int64
	for i := 0; i+lanes <= len(data); i += args.Stride * lanes {
		lane := data[i : i+lanes : i+lanes]
		s0 += int64(lane[0])
		s1 += int64(lane[1])
		s2 += int64(lane[2])
		s3 += int64(lane[3])
	}
	args.Sink = s0 + s1 + s2 + s3
}
