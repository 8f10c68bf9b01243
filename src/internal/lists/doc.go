// Package lists loads the two input files of bigip-sd: the URL list and the
// BigIP subnet list.
//
// Both files are read line by line. A line that does not parse is skipped and
// recorded as a diagnostic; only a file that cannot be opened or read is fatal.
//
// # Example Usage
//
//	urls, err := lists.LoadURLs("urls.txt")
//	if err != nil {
//	    return err
//	}
//	subnets, err := lists.LoadSubnets("bigip.txt")
//	if err != nil {
//	    return err
//	}
//	log.Infof("%d URLs, %d subnets", len(urls.URLs), len(subnets.Subnets))
package lists
