// Package scan reconciles local model files with their Civitai records.
//
// Discovery (Scan) lists model files that have no info sidecar yet.
// Resolution (CreateModelsInformation) hashes those files, looks them up by
// hash and writes the sidecar and preview beside them, optionally moving
// the file into its model folder. FixInformationFilenames renames existing
// sidecars to their canonical base name.
//
// Every step derives its state from the files on disk, so an interrupted
// batch resumes where it stopped when run again. Only one batch runs per
// Scanner at a time; a concurrent call fails with an error for which
// IsBusy reports true.
package scan
