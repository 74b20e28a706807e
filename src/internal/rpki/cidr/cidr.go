// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cidr

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"net/netip"
)

// SummarizeRange converts an inclusive IPv4 address range into the minimal
// ordered list of CIDR blocks exactly covering it.
//
// The summarization is greedy: emit the largest power-of-two-aligned block
// starting at the low end that does not exceed the high end, then repeat on
// the remainder. Non-aligned ranges split into multiple blocks, down to /32
// granularity where required.
//
// IPv6 ranges are rejected; RPKI archive data only expresses IPv6 resources
// as explicit prefixes, never as ranges.
//
// Parameters:
//   - start: Low end of the range, inclusive
//   - end: High end of the range, inclusive
//
// Returns:
//   - []netip.Prefix: Covering blocks in ascending address order
//   - error: Non-IPv4 input or start > end
func SummarizeRange(start, end netip.Addr) ([]netip.Prefix, error) {
	if !start.Is4() || !end.Is4() {
		return nil, fmt.Errorf("range summarization requires IPv4 addresses, got [%s, %s]", start, end)
	}

	lo := addrToUint32(start)
	hi := addrToUint32(end)
	if lo > hi {
		return nil, fmt.Errorf("inverted range [%s, %s]", start, end)
	}

	var blocks []netip.Prefix
	for {
		// Host bits allowed by the alignment of lo.
		align := bits.TrailingZeros32(lo) // 32 for lo == 0

		// Host bits allowed by the number of addresses left.
		remaining := uint64(hi) - uint64(lo) + 1
		span := 63 - bits.LeadingZeros64(remaining) // floor(log2)

		hostBits := align
		if span < hostBits {
			hostBits = span
		}

		blocks = append(blocks, netip.PrefixFrom(uint32ToAddr(lo), 32-hostBits))

		next := uint64(lo) + (uint64(1) << hostBits)
		if next > uint64(hi) {
			break
		}
		lo = uint32(next)
	}
	return blocks, nil
}

func addrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

func uint32ToAddr(n uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return netip.AddrFrom4(b)
}
