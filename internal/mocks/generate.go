package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/athlete --output domain/athlete --outpkg athletemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/jobscheduler --output domain/jobscheduler --outpkg jobschedulermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PageFetcher --dir ../usecase --output usecase --outpkg usecasemock --filename page_fetcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Geocoder --dir ../usecase --output usecase --outpkg usecasemock --filename geocoder_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TwitterClient --dir ../usecase --output usecase --outpkg usecasemock --filename twitter_client_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name YouTubeClient --dir ../usecase --output usecase --outpkg usecasemock --filename youtube_client_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name JobQueue --dir ../usecase --output usecase --outpkg usecasemock --filename job_queue_mock.go
