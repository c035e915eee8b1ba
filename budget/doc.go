// Package budget implements the compute budget header of v3 messages.
//
// A header carries up to four optional resource parameters. A flag byte records
// which of them are present and only present values are encoded:
//
//	offset  field                        width  present iff
//	0       flags                        1      always
//	1       compute_unit_limit           4      bit 0
//	next    compute_unit_price           8      bit 1
//	next    loaded_accounts_data_limit   4      bit 2
//	next    requested_heap_bytes_limit   4      bit 3
//
// Integers are fixed width little-endian. Bits 4 to 7 of the flag byte are reserved
// and must be zero.
//
// Besides the compact form above the header has two keyed forms, a msgpack map and
// a JSON object, that name every present field. All decoders finish through the
// same integrity check, so a decoded header always has exactly one flag bit per
// present value.
package budget
