package format

// CompressionMethod is the compression method id stored in a local file
// header. Ids are assigned by the ZIP specification (APPNOTE 4.4.5); gaps in
// the 0-98 range are reserved.
type CompressionMethod uint16

const (
	MethodStored           CompressionMethod = 0
	MethodShrunk           CompressionMethod = 1
	MethodReduced1         CompressionMethod = 2
	MethodReduced2         CompressionMethod = 3
	MethodReduced3         CompressionMethod = 4
	MethodReduced4         CompressionMethod = 5
	MethodImploded         CompressionMethod = 6
	MethodDeflated         CompressionMethod = 8
	MethodEnhancedDeflated CompressionMethod = 9
	MethodDCLImploded      CompressionMethod = 10
	MethodBZip2            CompressionMethod = 12
	MethodLZMA             CompressionMethod = 14
	MethodIBMTerse         CompressionMethod = 18
	MethodIBMLZ77          CompressionMethod = 19
	MethodPPMd             CompressionMethod = 98
)

// String returns a human-readable name for the compression method.
func (m CompressionMethod) String() string {
	switch m {
	case MethodStored:
		return "no compression"
	case MethodShrunk:
		return "shrunk"
	case MethodReduced1:
		return "reduced with compression factor 1"
	case MethodReduced2:
		return "reduced with compression factor 2"
	case MethodReduced3:
		return "reduced with compression factor 3"
	case MethodReduced4:
		return "reduced with compression factor 4"
	case MethodImploded:
		return "imploded"
	case MethodDeflated:
		return "deflated"
	case MethodEnhancedDeflated:
		return "enhanced deflated"
	case MethodDCLImploded:
		return "PKWare DCL imploded"
	case MethodBZip2:
		return "compressed using BZIP2"
	case MethodLZMA:
		return "LZMA"
	case MethodIBMTerse:
		return "compressed using IBM TERSE"
	case MethodIBMLZ77:
		return "IBM LZ77 z"
	case MethodPPMd:
		return "PPMd version I, Rev 1"
	case 7, 11, 13, 15, 16, 17:
		return "reserved"
	default:
		return "unknown"
	}
}
