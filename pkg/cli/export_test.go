package cli

var RunScanForTest = runScan
