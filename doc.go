// Package sicd reads Sensor Independent Complex Data (SICD) products.
//
// A SICD product is a NITF 2.1 (or NSIF 1.0) container holding complex SAR
// imagery in one or more image segments and an XML metadata document in a
// data extension segment. The metadata schema varies by the version the
// document declares in its namespace (for example "urn:SICD:1.2.1").
//
// # Quick Start
//
//	p, err := sicd.Open("collect.ntf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	fmt.Println("version:", p.Version())
//	for i, img := range p.Images() {
//		fmt.Printf("segment %d: %dx%d\n", i, img.Rows, img.Cols)
//	}
//
// # Metadata
//
// Metadata is tagged with the version it was parsed as. Versions 0.4.0 and
// 0.5.0 have their own layouts; every 1.x version shares one backward
// compatible layout. Use the typed accessors to reach the document:
//
//	if doc, ok := p.MetadataV1(); ok {
//		fmt.Println(doc.CollectionInfo.CollectorName)
//	}
//
// Versions 0.3.1 and 0.4.1 are recognized but not supported; opening them
// fails with *UnimplementedError. An unknown namespace fails with
// *VersionError.
//
// # Pixels
//
// Each sample is stored as a big-endian float32 real part followed by a
// big-endian float32 imaginary part. Images are decoded into row-major
// []complex64 using a bounded pool of goroutines; the result does not
// depend on the worker count.
//
// # Sources
//
// Open reads local files and transparently expands gzip, zstd and lz4
// wrapped products. OpenReader accepts any io.ReaderAt; the source/s3 and
// source/minio packages adapt object store objects to it.
//
// # Error Handling
//
// All failures are fatal: a product is either fully assembled or not
// returned at all. Inspect errors with errors.As:
//
//	var verr *sicd.VersionError
//	if errors.As(err, &verr) {
//		log.Printf("unknown SICD namespace %q", verr.Token)
//	}
package sicd
