// Package message defines the transaction message generations compared by this
// module.
//
// Every generation shares the same body: account keys, a recent blockhash, compiled
// instructions and address table lookups. They differ only in how the compute
// budget travels:
//
//	V0  compute budget instructions addressed to a dedicated program
//	V1  unit price and limit in the header, other parameters as instructions
//	V2  all four parameters in fixed header slots
//	V3  a budget header with a flag byte and only the present parameters
package message
