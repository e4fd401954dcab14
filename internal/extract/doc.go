// Package extract converts raw spreadsheet artifacts into tabular data.
//
// OOXML (.xlsx) attachments are parsed in-process with excelize. Anything
// else, such as legacy .xls exports from the student information system, is
// uploaded to Google Drive, converted into a temporary Google Sheets file,
// read back, and cleaned up. The conversion backend is eventually consistent,
// so the convert step runs under retry, and cleanup waits for the backend to
// settle and never fails the caller.
//
// In both paths the header row is dropped and a workbook with at most one
// row yields empty data rather than an error.
package extract
