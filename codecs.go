package parquet

import (
	"github.com/segmentio/parquet-core/compress"
	"github.com/segmentio/parquet-core/compress/brotli"
	"github.com/segmentio/parquet-core/compress/gzip"
	"github.com/segmentio/parquet-core/compress/lz4"
	"github.com/segmentio/parquet-core/compress/snappy"
	"github.com/segmentio/parquet-core/compress/zstd"
	"github.com/segmentio/parquet-core/format"
)

// codecRegistry maps the wire compression codec to a constructor for the
// compress.Codec implementation backing it. Uncompressed isn't registered
// here: callers short-circuit it to a nil Codec before the lookup.
var codecRegistry = map[format.CompressionCodec]func() compress.Codec{
	format.Gzip:   func() compress.Codec { return &gzip.Codec{} },
	format.Snappy: func() compress.Codec { return &snappy.Codec{} },
	format.Zstd:   func() compress.Codec { return &zstd.Codec{} },
	format.Lz4Raw: func() compress.Codec { return &lz4.Codec{} },
	format.Brotli: func() compress.Codec { return &brotli.Codec{} },
}
