// Package domain models flood-risk assessment for the Chao Phraya river at
// Inburi, Sing Buri province.
//
// # Data Sources
//
// Water levels come from the provincial listing page at
// https://singburi.thaiwater.net/wl, one table row per gauge. The row layout
// has changed several times: the station name has appeared in a <th> header
// cell, in a plain <td>, and inside a link. Matching is therefore done on the
// row's full text, and the level column is the single constant [LevelColumn].
//
// Dam discharge is the outflow of the Chao Phraya Dam at Chai Nat (gauge C.13),
// upstream of Inburi. It is read from a side-channel file or a time-series API
// and defaults to [DefaultDischarge] when unavailable.
//
// # Units
//
//	Water level:    meters above mean sea level (ม.รทก.), two decimals.
//	Bank height:    13.00 m MSL at the Inburi gauge.
//	Discharge:      cubic meters per second (ลบ.ม./วินาที), whole numbers.
//
// # Severity classification
//
// Distance to bank is BankHeight - level. Rules are checked in order and the
// first match wins; comparisons are strict:
//
//	Critical: discharge > 2400 m³/s or distance < 1.0 m
//	Watch:    discharge > 1800 m³/s or distance < 2.0 m
//	Normal:   otherwise
//
// # Report
//
// The broadcast text is a fixed Thai template (see [ComposeMessage]) with the
// run time in Asia/Bangkok civil time, formatted dd/mm/yyyy HH:MM.
package domain
