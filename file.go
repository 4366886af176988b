package parquet

// Magic is the 4-byte marker opening and closing every Parquet file.
const Magic = "PAR1"

// FooterLength is the length of the trailer appended after the Thrift
// metadata block: 4 bytes (little-endian metadata length) + len(Magic).
const FooterLength = 4 + len(Magic)

// Version is the file format version written to FileMetaData.Version.
const Version = 1
