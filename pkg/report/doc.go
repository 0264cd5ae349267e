// Package report ranks orbit representatives and writes them out.
//
// Every representative becomes an [Entry] carrying its printed label and the
// average distance between its zero-colored vertices. [Rank] orders entries
// by decreasing distance, then by padded label length and label. A [Writer]
// turns the ranked entries of each zero count into one text file:
//
//	out_rbc/
//	    rbc_2zeros_10.txt
//	    rbc_3zeros_40.txt
//	    ...
//	    run.json
//
// with lines such as
//
//  1. 4(3,5) 781.5
//  2. 2(5,7) 754.0
//
// The output directory must not exist beforehand; [NewWriter] refuses to
// touch an existing one.
package report
