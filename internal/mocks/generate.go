package mocks

//go:generate mockery --name StatisticStore --srcpkg github.com/aevon-lab/inspektr/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name StatisticManager --srcpkg github.com/aevon-lab/inspektr/internal/statistics --output ./statistics --outpkg statisticsmocks --with-expecter
